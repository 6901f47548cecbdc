// 指示: miu200521358
// Package objfile はWavefront OBJ形式のシーン読み書きを提供する。
package objfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/spatial/r3"
)

const objFileMode = 0o644

// ObjRepository はOBJファイルの書き出し契約を表す。
type ObjRepository struct{}

// NewObjRepository はObjRepositoryを生成する。
func NewObjRepository() *ObjRepository {
	return &ObjRepository{}
}

// CanWrite はOBJ形式のみ書き出せる。
func (r *ObjRepository) CanWrite(format model.ExportFormat) bool {
	return format == model.EXPORT_FORMAT_OBJ
}

// Save は出力単位をOBJファイルへ書き出す。
// 階層グループは同一ファイル内の複数オブジェクトとして並べる。
func (r *ObjRepository) Save(path string, unit *model.ExportUnit, options moutput.SaveOptions) error {
	if unit == nil || len(unit.Buffers) == 0 {
		return fmt.Errorf("書き出し対象の出力単位が空です")
	}
	if !options.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("出力先ファイルが既に存在します: %s", path)
		}
	}

	var builder strings.Builder
	vertexOffset := 1
	normalOffset := 1
	for _, buffer := range unit.Buffers {
		if buffer == nil || buffer.IsReleased() {
			return fmt.Errorf("解放済みバッファは書き出せません: unit=%s", unit.Name)
		}
		writeObject(&builder, buffer, vertexOffset, normalOffset)
		vertexOffset += buffer.VertexCount()
		normalOffset += buffer.PolyCount()
	}
	if err := os.WriteFile(path, []byte(builder.String()), objFileMode); err != nil {
		return fmt.Errorf("OBJファイルの書き出しに失敗しました: %s: %w", path, err)
	}
	return nil
}

// writeObject は1オブジェクト分の頂点、法線、面を書き出す。
func writeObject(builder *strings.Builder, buffer *model.MeshBuffer, vertexOffset, normalOffset int) {
	fmt.Fprintf(builder, "o %s\n", buffer.Name)
	for _, position := range buffer.Positions {
		fmt.Fprintf(builder, "v %g %g %g\n", position.X, position.Y, position.Z)
	}
	for _, normal := range buffer.FaceNormals {
		fmt.Fprintf(builder, "vn %g %g %g\n", normal.X, normal.Y, normal.Z)
	}
	for faceIndex, face := range buffer.Faces {
		builder.WriteString("f")
		for _, vertexIndex := range face {
			fmt.Fprintf(builder, " %d//%d", vertexIndex+vertexOffset, faceIndex+normalOffset)
		}
		builder.WriteString("\n")
	}
}

// ObjSceneProvider はディレクトリ内のOBJファイルをシーンとして扱う。
// ファイル名(拡張子なし)がオブジェクトIDになる。
type ObjSceneProvider struct {
	dir string
}

// NewObjSceneProvider はObjSceneProviderを生成する。
func NewObjSceneProvider(dir string) *ObjSceneProvider {
	return &ObjSceneProvider{dir: dir}
}

// Exists はオブジェクトIDに対応するOBJファイルがあるか返す。
func (p *ObjSceneProvider) Exists(objectID string) bool {
	_, err := os.Stat(p.objPath(objectID))
	return err == nil
}

// Kind はOBJファイル由来のオブジェクト種別を返す。常にメッシュ。
func (p *ObjSceneProvider) Kind(objectID string) (model.ObjectKind, error) {
	if !p.Exists(objectID) {
		return "", fmt.Errorf("OBJファイルが見つかりません: %s", objectID)
	}
	return model.OBJECT_KIND_MESH, nil
}

// DuplicateToMesh はOBJファイルを読み込んでメッシュバッファを生成する。
func (p *ObjSceneProvider) DuplicateToMesh(objectID string) (*model.MeshBuffer, error) {
	file, err := os.Open(p.objPath(objectID))
	if err != nil {
		return nil, fmt.Errorf("OBJファイルを開けません: %s: %w", objectID, err)
	}
	defer file.Close()

	var positions []r3.Vec
	var faces [][]int
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			position, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("頂点行の解析に失敗しました: %s:%d: %w", objectID, lineNumber, err)
			}
			positions = append(positions, position)
		case "f":
			face, err := parseFace(fields[1:], len(positions))
			if err != nil {
				return nil, fmt.Errorf("面行の解析に失敗しました: %s:%d: %w", objectID, lineNumber, err)
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("OBJファイルの読み込みに失敗しました: %s: %w", objectID, err)
	}
	return model.NewMeshBuffer(objectID, objectID, positions, faces), nil
}

// Modifiers はOBJファイル由来のモディファイア列を返す。常に空。
func (p *ObjSceneProvider) Modifiers(objectID string) ([]moutput.IModifier, error) {
	if !p.Exists(objectID) {
		return nil, fmt.Errorf("OBJファイルが見つかりません: %s", objectID)
	}
	return nil, nil
}

// SetDisplayColour はファイルシーンでは表示色を持たないため何もしない。
func (p *ObjSceneProvider) SetDisplayColour(objectID string, colour model.Colour) error {
	return nil
}

// ClearDisplayColour はファイルシーンでは表示色を持たないため何もしない。
func (p *ObjSceneProvider) ClearDisplayColour(objectID string) error {
	return nil
}

// ListObjectIDs はディレクトリ内のOBJファイル名一覧を返す。
func (p *ObjSceneProvider) ListObjectIDs() []string {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil
	}
	var objectIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".obj") {
			continue
		}
		objectIDs = append(objectIDs, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return objectIDs
}

func (p *ObjSceneProvider) objPath(objectID string) string {
	return filepath.Join(p.dir, objectID+".obj")
}

func parseVertex(fields []string) (r3.Vec, error) {
	if len(fields) < 3 {
		return r3.Vec{}, fmt.Errorf("座標成分が不足しています")
	}
	coords := make([]float64, 3)
	for index := 0; index < 3; index++ {
		value, err := strconv.ParseFloat(fields[index], 64)
		if err != nil {
			return r3.Vec{}, err
		}
		coords[index] = value
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("面の頂点数が3未満です")
	}
	face := make([]int, 0, len(fields))
	for _, field := range fields {
		// f v/vt/vn 形式の先頭成分のみ使う。
		head := strings.SplitN(field, "/", 2)[0]
		index, err := strconv.Atoi(head)
		if err != nil {
			return nil, err
		}
		if index < 0 {
			index = vertexCount + index + 1
		}
		if index < 1 || index > vertexCount {
			return nil, fmt.Errorf("頂点番号が範囲外です: %d", index)
		}
		face = append(face, index-1)
	}
	return face, nil
}
