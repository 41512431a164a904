package assets

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/aurora/engine/core"
)

// spirvMagic is the first word of every valid SPIR-V binary.
const spirvMagic uint32 = 0x07230203

// ShaderBinary is a precompiled shader: the raw SPIR-V words plus the entry
// point the pipeline stage should invoke.
type ShaderBinary struct {
	Name       string
	FullPath   string
	Words      []uint32
	EntryPoint string
}

// LoadShaderBinary reads a compiled .spv file from shaderDir and decodes it
// into SPIR-V words. The bytecode is treated as opaque beyond the minimal
// sanity checks (4-byte alignment, magic number).
func LoadShaderBinary(shaderDir, name string) (*ShaderBinary, error) {
	path := filepath.Join(shaderDir, fmt.Sprintf("%s.spv", name))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := bytesToWords(data)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", path, err)
	}
	core.LogDebug("loaded shader binary %s (%d words)", path, len(words))
	return &ShaderBinary{
		Name:       name,
		FullPath:   path,
		Words:      words,
		EntryPoint: "main",
	}, nil
}

func bytesToWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("bytecode size %d is not a positive multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("bad SPIR-V magic 0x%08x", words[0])
	}
	return words, nil
}
