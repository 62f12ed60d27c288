package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSceneLoad is matched by every *SceneLoadError
	ErrSceneLoad = errors.New("scene load failed")
	// ErrTextureLoad is matched by every *TextureLoadError
	ErrTextureLoad = errors.New("texture load failed")
)

// SceneLoadError reports a scene that could not be built. No scene is
// returned alongside it.
type SceneLoadError struct {
	Scene string
	Err   error
}

func (e *SceneLoadError) Error() string {
	return fmt.Sprintf("scene %q: %v", e.Scene, e.Err)
}

func (e *SceneLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSceneLoad) match
func (e *SceneLoadError) Is(target error) bool { return target == ErrSceneLoad }

// TextureLoadError reports a missing or undecodable texture image
type TextureLoadError struct {
	Path string
	Err  error
}

func (e *TextureLoadError) Error() string {
	return fmt.Sprintf("unable to load texture map %q: %v", e.Path, e.Err)
}

func (e *TextureLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTextureLoad) match
func (e *TextureLoadError) Is(target error) bool { return target == ErrTextureLoad }
