package results

import (
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/kelindar/binary"
	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/sbinet/npyio"

	"github.com/mason-leap-lab/gmbcplot/common/stats"
)

const (
	FormatPickle = "pickle"
	FormatNpy    = "npy"
	FormatBinary = "bin"
)

var (
	registry = make(map[string]Decoder)
)

// Decoder turns the content of a result file into a table.
type Decoder interface {
	Decode(r io.Reader) (*Table, error)
}

// LoadDecoder returns the decoder registered for a format.
func LoadDecoder(format string) (Decoder, bool) {
	decoder, ok := registry[format]
	return decoder, ok
}

// FormatOf guesses the format of a result file by its extension. Files without a
// known extension are treated as pickles.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return FormatNpy
	case ".bin":
		return FormatBinary
	default:
		return FormatPickle
	}
}

// PickleDecoder reads a pickled list or tuple of numbers, or of rows of numbers.
type PickleDecoder struct {
}

func (d *PickleDecoder) Decode(r io.Reader) (*Table, error) {
	u := pickle.NewUnpickler(r)
	obj, err := u.Load()
	if err != nil {
		return nil, err
	}

	items, ok := pickleSequence(obj)
	if !ok {
		return nil, fmt.Errorf("%w: pickled %T", ErrUnsupportedPayload, obj)
	}
	rows := make([][]float64, len(items))
	for i, item := range items {
		if v, ok := pickleNumber(item); ok {
			rows[i] = []float64{v}
			continue
		}
		cells, ok := pickleSequence(item)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is %T", ErrUnsupportedPayload, i, item)
		}
		rows[i] = make([]float64, len(cells))
		for j, cell := range cells {
			if rows[i][j], ok = pickleNumber(cell); !ok {
				return nil, fmt.Errorf("%w: cell %d,%d is %T", ErrUnsupportedPayload, i, j, cell)
			}
		}
	}
	return NewTableFromRows(rows)
}

func pickleSequence(obj interface{}) ([]interface{}, bool) {
	switch seq := obj.(type) {
	case *types.List:
		return *seq, true
	case types.List:
		return seq, true
	case *types.Tuple:
		return *seq, true
	case types.Tuple:
		return seq, true
	case []interface{}:
		return seq, true
	default:
		return nil, false
	}
}

func pickleNumber(obj interface{}) (float64, bool) {
	switch v := obj.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	default:
		return 0, false
	}
}

// NpyDecoder reads a one or two dimensional NumPy array.
type NpyDecoder struct {
}

func (d *NpyDecoder) Decode(r io.Reader) (*Table, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}

	shape := npy.Header.Descr.Shape
	data, err := readNpyFloats(npy)
	if err != nil {
		return nil, err
	}

	switch len(shape) {
	case 0:
		return NewTableFromFlat(data, 1)
	case 1:
		return NewTableFromFlat(data, 1)
	case 2:
		rows, cols := shape[0], shape[1]
		if npy.Header.Descr.Fortran {
			data = transpose(data, rows, cols)
		}
		if cols == 0 {
			return NewTableFromRows(make([][]float64, rows))
		}
		return NewTableFromFlat(data, cols)
	default:
		return nil, fmt.Errorf("%w: %d dimensional array", ErrUnsupportedPayload, len(shape))
	}
}

// readNpyFloats reads the array in its stored dtype and promotes it to float64.
func readNpyFloats(npy *npyio.Reader) ([]float64, error) {
	switch dtype := strings.TrimLeft(npy.Header.Descr.Type, "<>|="); dtype {
	case "f8", "float64":
		var data []float64
		err := npy.Read(&data)
		return data, err
	case "f4", "float32":
		return readNpyAs[float32](npy)
	case "i8", "int64":
		return readNpyAs[int64](npy)
	case "i4", "int32":
		return readNpyAs[int32](npy)
	case "i2", "int16":
		return readNpyAs[int16](npy)
	case "i1", "int8":
		return readNpyAs[int8](npy)
	case "u8", "uint64":
		return readNpyAs[uint64](npy)
	case "u4", "uint32":
		return readNpyAs[uint32](npy)
	case "u2", "uint16":
		return readNpyAs[uint16](npy)
	case "u1", "uint8":
		return readNpyAs[uint8](npy)
	case "b1", "bool":
		var raw []bool
		if err := npy.Read(&raw); err != nil {
			return nil, err
		}
		data := make([]float64, len(raw))
		for i, v := range raw {
			if v {
				data[i] = 1
			}
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: npy dtype %s", ErrUnsupportedPayload, npy.Header.Descr.Type)
	}
}

func readNpyAs[T stats.Number](npy *npyio.Reader) ([]float64, error) {
	var raw []T
	if err := npy.Read(&raw); err != nil {
		return nil, err
	}
	data := make([]float64, len(raw))
	for i, v := range raw {
		data[i] = float64(v)
	}
	return data, nil
}

// transpose converts column-major data of a rows x cols matrix to row-major.
func transpose(data []float64, rows, cols int) []float64 {
	out := make([]float64, len(data))
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			out[r*cols+c] = data[c*rows+r]
		}
	}
	return out
}

// BinaryDecoder reads tables written by EncodeTable.
type BinaryDecoder struct {
}

func (d *BinaryDecoder) Decode(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var table Table
	if err := binary.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return NewTableFromRows(table.Rows)
}

// EncodeTable writes a table in the native binary format.
func EncodeTable(w io.Writer, table *Table) error {
	return binary.MarshalTo(*table, w)
}

func init() {
	registry[FormatPickle] = &PickleDecoder{}
	registry[FormatNpy] = &NpyDecoder{}
	registry[FormatBinary] = &BinaryDecoder{}
}
