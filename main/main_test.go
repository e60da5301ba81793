package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerSchema = `
name: header
align: 4
fields:
  - {name: magic, type: u32}
  - {name: kind, type: u8, values: [1, 2]}
  - {name: ok, type: bool}
  - {name: len, type: u16}
tail:
  type: u8
`

func writeFixture(t *testing.T, kind byte) (schemaPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()
	schemaPath = filepath.Join(dir, "header.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(headerSchema), 0o644))

	data := binary.NativeEndian.AppendUint32(nil, 0xcafe)
	data = append(data, kind, 1)
	data = binary.NativeEndian.AppendUint16(data, 3)
	data = append(data, 'x', 'y', 'z', 0)
	dataPath = filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(dataPath, data, 0o644))
	return schemaPath, dataPath
}

func TestRunTable(t *testing.T) {
	schemaPath, dataPath := writeFixture(t, 2)
	var out, errOut bytes.Buffer
	err := run([]string{"-schema", schemaPath, "-file", dataPath}, &out, &errOut, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "header (12 bytes)")
	assert.Contains(t, out.String(), "kind")
	assert.Contains(t, out.String(), "[120 121 122 0]")
}

func TestRunJSON(t *testing.T) {
	schemaPath, dataPath := writeFixture(t, 1)
	var out bytes.Buffer
	err := run([]string{"-schema", schemaPath, "-file", dataPath, "-json", "-mode", "prefix", "-elems", "2"}, &out, &bytes.Buffer{}, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"schema": "header"`)
	assert.Contains(t, out.String(), `"tail": [`)
	assert.NotContains(t, out.String(), "122")
}

func TestRunReportsKind(t *testing.T) {
	schemaPath, dataPath := writeFixture(t, 9)
	err := run([]string{"-schema", schemaPath, "-file", dataPath}, &bytes.Buffer{}, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validity error")

	err = run([]string{"-schema", schemaPath, "-file", dataPath, "-elems", "9"}, &bytes.Buffer{}, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size error")
}

func TestRunFlagErrors(t *testing.T) {
	var errOut bytes.Buffer
	assert.Error(t, run(nil, &bytes.Buffer{}, &errOut, false))
	assert.Error(t, run([]string{"-schema", "a", "-file", "b", "-mode", "middle"}, &bytes.Buffer{}, &errOut, false))
	assert.Error(t, run([]string{"-schema", "missing.yaml", "-file", "b"}, &bytes.Buffer{}, &errOut, false))
}
