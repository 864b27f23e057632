package meshio

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"github.com/seqsense/pcgol/pc/filter/voxelgrid"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/logx"
)

// DataCoordinatesField is the name of the coordinate field created for
// point cloud datapoints.
const DataCoordinatesField = "data_coordinates"

// PointCloudOptions configures ReadPointCloud.
type PointCloudOptions struct {
	// VoxelSize downsamples the cloud to one point per voxel of this edge
	// length. Zero keeps every point.
	VoxelSize float64
}

// ReadPointCloud loads a PCD file as datapoints of a new module, carrying a
// 3 component coordinate field named DataCoordinatesField.
func ReadPointCloud(path string, opts PointCloudOptions) (*field.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening point cloud")
	}
	defer f.Close()

	fm, err := DecodePointCloud(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return fm, nil
}

// DecodePointCloud is ReadPointCloud on a reader.
func DecodePointCloud(r io.Reader, opts PointCloudOptions) (*field.Module, error) {
	pp, err := pc.Unmarshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding pcd")
	}
	if opts.VoxelSize > 0 {
		s := float32(opts.VoxelSize)
		n := pp.Points
		if pp, err = voxelgrid.New(mat.Vec3{s, s, s}).Filter(pp); err != nil {
			return nil, errors.Wrap(err, "voxel grid filter")
		}
		logx.Logger().Debug("point cloud downsampled", "voxel_size", opts.VoxelSize, "in", n, "out", pp.Points)
	}
	return pointCloudModule(pp)
}

func pointCloudModule(pp *pc.PointCloud) (*field.Module, error) {
	fm := field.NewModule()
	fm.BeginChange()
	defer fm.EndChange()

	coords, err := fm.CreateFieldFiniteElement(DataCoordinatesField, 3)
	if err != nil {
		return nil, err
	}
	coords.SetTypeCoordinate(true)

	if pp.Points == 0 {
		return fm, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, errors.Wrap(err, "point cloud has no xyz")
	}
	datapoints := fm.FindNodesetByDomainType(field.DomainDataPoints)
	versions := map[field.ValueLabel]int{field.ValueLabelValue: 1}
	for id := 1; it.IsValid(); it.Incr() {
		v := it.Vec3()
		n, err := datapoints.CreateNode(id)
		if err != nil {
			return nil, err
		}
		if err := coords.DefineAtNode(n, versions); err != nil {
			return nil, err
		}
		p := []float64{float64(v[0]), float64(v[1]), float64(v[2])}
		if err := coords.SetNodeParameters(n, field.ValueLabelValue, 1, p); err != nil {
			return nil, err
		}
		id++
	}
	return fm, nil
}

// NewPointCloud converts the VALUE parameters of a datapoint or node
// coordinate field to an xyz point cloud.
func NewPointCloud(coords field.Field, s *field.Nodeset) (*pc.PointCloud, error) {
	vecs, err := NodesetPositions(coords, s)
	if err != nil {
		return nil, err
	}

	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z"},
			Size:      []int{4, 4, 4},
			Type:      []string{"F", "F", "F"},
			Count:     []int{1, 1, 1},
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
			Width:     len(vecs),
			Height:    1,
		},
		Points: len(vecs),
	}
	pp.Data = make([]byte, len(vecs)*pp.Stride())
	if len(vecs) == 0 {
		return pp, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	for _, v := range vecs {
		it.SetVec3(mat.Vec3(v))
		it.Incr()
	}
	return pp, nil
}

// WritePointCloud saves points as a binary PCD file.
func WritePointCloud(w io.Writer, pp *pc.PointCloud) error {
	return errors.Wrap(pc.Marshal(pp, w), "encoding pcd")
}
