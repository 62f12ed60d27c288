package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"fortio.org/log"
	"fortio.org/safecast"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// PLY file formats
const (
	PLYFormatASCII        = "ascii"
	PLYFormatLittleEndian = "binary_little_endian"
	PLYFormatBigEndian    = "binary_big_endian"
)

// maxPLYPrealloc caps how many entries are reserved from a header count
// before any body data has been read
const maxPLYPrealloc = 1 << 20

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // One of the PLYFormat constants
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one "element" block of the header, e.g. vertex or face
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// Element returns the named element, or nil
func (h *PLYHeader) Element(name string) *PLYElement {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i]
		}
	}
	return nil
}

// index returns the position of the first property matching any of names,
// or -1
func (e *PLYElement) index(names ...string) int {
	for i, prop := range e.Properties {
		for _, name := range names {
			if prop.Name == name {
				return i
			}
		}
	}
	return -1
}

// PLYData contains the raw data loaded from a PLY file. Optional per-vertex
// arrays are empty when the file does not carry them.
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle); polygons are fanned
	Normals   []core.Vec3 // Per-vertex normals (nx, ny, nz)
	Colors    []core.Vec3 // Per-vertex colors (r, g, b) normalized to [0,1]
	TexCoords []core.Vec2 // Per-vertex texture coordinates (u, v)
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(bufio.NewReaderSize(file, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	log.S(log.Info, "Loaded PLY data",
		log.Str("file", filename),
		log.Any("vertices", len(data.Vertices)),
		log.Any("triangles", len(data.Faces)/3),
		log.Any("elapsed", time.Since(startTime).String()))
	return data, nil
}

// ReadPLY parses a complete PLY stream
func ReadPLY(r *bufio.Reader) (*PLYData, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case PLYFormatLittleEndian:
		values = &binaryPLYReader{r: r, order: binary.LittleEndian}
	case PLYFormatBigEndian:
		values = &binaryPLYReader{r: r, order: binary.BigEndian}
	case PLYFormatASCII:
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		values = &asciiPLYReader{scanner: scanner}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{}
	for i := range header.Elements {
		element := &header.Elements[i]
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, data)
		case "face":
			err = readPLYFaces(values, element, data)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read PLY %s data: %w", element.Name, err)
		}
	}

	return data, nil
}

// LoadPLYMesh loads a PLY file into a mesh with base material m. Vertex
// normals, colors and texture coordinates are carried over when present.
func LoadPLYMesh(filename string, m *material.Material) (*geometry.Mesh, error) {
	data, err := LoadPLY(filename)
	if err != nil {
		return nil, err
	}
	return NewMeshFromPLY(data, m)
}

// NewMeshFromPLY builds a mesh from already loaded PLY data
func NewMeshFromPLY(data *PLYData, m *material.Material) (*geometry.Mesh, error) {
	mesh := geometry.NewMesh(m)
	for _, v := range data.Vertices {
		mesh.AddVertex(v)
	}
	for _, n := range data.Normals {
		mesh.AddNormal(n)
	}
	for _, c := range data.Colors {
		mesh.AddColor(c)
	}
	for _, uv := range data.TexCoords {
		mesh.AddUV(uv)
	}
	for i := 0; i+2 < len(data.Faces); i += 3 {
		if err := mesh.AddFace(data.Faces[i], data.Faces[i+1], data.Faces[i+2]); err != nil {
			return nil, err
		}
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	if mesh.DegenerateCount() > 0 {
		log.Warnf("PLY mesh: skipped %d degenerate faces", mesh.DegenerateCount())
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	for lineNumber := 1; ; lineNumber++ {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, errors.New("missing end_header")
			}
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line = strings.TrimSpace(line)

		if lineNumber == 1 {
			if line != "ply" {
				return nil, errors.New("not a PLY file")
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: invalid format line", lineNumber)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: invalid element line", lineNumber)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("line %d: invalid element count: %s", lineNumber, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
		case "property":
			if current == nil {
				return nil, fmt.Errorf("line %d: property before any element", lineNumber)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("line %d: unknown header keyword %q", lineNumber, parts[0])
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, errors.New("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, errors.New("invalid list property definition")
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list property types %s %s", prop.ListType, prop.DataType)
		}
		return prop, nil
	}

	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unsupported data type: %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// isIntegerType reports whether colors of this type are stored as 0-255
func isIntegerType(dataType string) bool {
	switch dataType {
	case "float", "float32", "double", "float64":
		return false
	default:
		return true
	}
}

// plyValueReader yields successive scalar values of a PLY body
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type binaryPLYReader struct {
	r     io.Reader
	order binary.ByteOrder
}

func (b *binaryPLYReader) read(dataType string) (float64, error) {
	switch dataType {
	case "float", "float32":
		var v float32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "double", "float64":
		var v float64
		err := binary.Read(b.r, b.order, &v)
		return v, err
	case "int", "int32":
		var v int32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "char", "int8":
		var v int8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	default:
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
}

type asciiPLYReader struct {
	scanner *bufio.Scanner
}

func (a *asciiPLYReader) read(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

// readCount reads a list length and checks it is a small non-negative integer
func readCount(values plyValueReader, prop PLYProperty) (int, error) {
	raw, err := values.read(prop.ListType)
	if err != nil {
		return 0, err
	}
	count, err := safecast.Convert[int](raw)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("invalid list length %v for %s", raw, prop.Name)
	}
	return count, nil
}

// readPLYVertices reads every vertex record, keeping position, normal,
// color and texture coordinate properties
func readPLYVertices(values plyValueReader, element *PLYElement, data *PLYData) error {
	position := [3]int{element.index("x"), element.index("y"), element.index("z")}
	if position[0] < 0 || position[1] < 0 || position[2] < 0 {
		return errors.New("vertex element lacks x, y or z")
	}
	normal := [3]int{element.index("nx"), element.index("ny"), element.index("nz")}
	color := [3]int{element.index("red", "r"), element.index("green", "g"), element.index("blue", "b")}
	uv := [2]int{element.index("u", "s", "texture_u"), element.index("v", "t", "texture_v")}

	hasNormals := normal[0] >= 0 && normal[1] >= 0 && normal[2] >= 0
	hasColors := color[0] >= 0 && color[1] >= 0 && color[2] >= 0
	hasTexCoords := uv[0] >= 0 && uv[1] >= 0

	colorRange := 1.0
	if hasColors && isIntegerType(element.Properties[color[0]].Type) {
		colorRange = 255.0
	}

	data.Vertices = make([]core.Vec3, 0, min(element.Count, maxPLYPrealloc))
	record := make([]float64, len(element.Properties))

	for i := 0; i < element.Count; i++ {
		for p, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(values, prop); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d, property %s: %w", i, prop.Name, err)
			}
			record[p] = v
		}

		data.Vertices = append(data.Vertices, core.NewVec3(record[position[0]], record[position[1]], record[position[2]]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(record[normal[0]], record[normal[1]], record[normal[2]]))
		}
		if hasColors {
			data.Colors = append(data.Colors, core.NewVec3(
				record[color[0]]/colorRange,
				record[color[1]]/colorRange,
				record[color[2]]/colorRange,
			))
		}
		if hasTexCoords {
			data.TexCoords = append(data.TexCoords, core.NewVec2(record[uv[0]], record[uv[1]]))
		}
	}
	return nil
}

// readPLYFaces reads the vertex index lists, fanning polygons into triangles
func readPLYFaces(values plyValueReader, element *PLYElement, data *PLYData) error {
	indicesProp := element.index("vertex_indices", "vertex_index")
	if indicesProp < 0 {
		return errors.New("face element lacks vertex_indices")
	}

	data.Faces = make([]int, 0, 3*min(element.Count, maxPLYPrealloc))
	var polygon []int

	for i := 0; i < element.Count; i++ {
		for p, prop := range element.Properties {
			if p != indicesProp {
				if err := skipPLYProperty(values, prop); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := readCount(values, prop)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			polygon = polygon[:0]
			for j := 0; j < count; j++ {
				raw, err := values.read(prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				index, err := safecast.Convert[int](raw)
				if err != nil || index < 0 || index >= len(data.Vertices) {
					return fmt.Errorf("face %d: vertex index %v out of range", i, raw)
				}
				polygon = append(polygon, index)
			}
			if count < 3 {
				return fmt.Errorf("face %d: only %d vertices", i, count)
			}
			for j := 1; j+1 < count; j++ {
				data.Faces = append(data.Faces, polygon[0], polygon[j], polygon[j+1])
			}
		}
	}
	return nil
}

// skipPLYElement consumes an element the loader has no use for
func skipPLYElement(values plyValueReader, element *PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop PLYProperty) error {
	count, err := readCount(values, prop)
	if err != nil {
		return err
	}
	for j := 0; j < count; j++ {
		if _, err := values.read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}
