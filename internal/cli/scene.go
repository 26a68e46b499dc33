package cli

import (
	"os"

	"github.com/matzehuels/scenegraph/pkg/errors"
	sio "github.com/matzehuels/scenegraph/pkg/io"
	"github.com/matzehuels/scenegraph/pkg/pipeline"
)

// readScene reads a scene document and detects its format from the
// extension.
func readScene(path string) ([]byte, sio.Format, error) {
	if err := errors.ValidateScenePath(path); err != nil {
		return nil, "", err
	}
	format, err := sio.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

// sceneOptions builds pipeline options for the scene at path.
func sceneOptions(path string) (pipeline.Options, error) {
	data, format, err := readScene(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Source: path, Scene: data, SceneFormat: format}, nil
}
