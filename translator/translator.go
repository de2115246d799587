package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator lazily starts the ANGLE translator. Startup compiles a WASM
// module, so it happens at most once per process.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Result is a translated fragment stage.
type Result struct {
	Code string
	// Uniforms maps a source uniform name to the name it carries in Code.
	Uniforms map[string]string
}

// TranslateFragment lowers a WebGL2 fragment shader to GLSL 410 core, or to
// ESSL when gles is set.
func TranslateFragment(source string, gles bool) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	fs, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Code:     fs.Code,
		Uniforms: make(map[string]string, len(fs.Variables)),
	}
	for name, v := range fs.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
