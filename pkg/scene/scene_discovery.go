package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fortio.org/log"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, the -scene value
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // One-line description
}

// Options carries the inputs a built-in scene may take from the caller
type Options struct {
	AspectRatio float64 // Overrides the scene's camera aspect ratio when > 0
	TexturePath string  // Image shown by the textures scene
	CubeMapPath string  // Directory of posx/negx/... faces replacing the environment
	MeshPath    string  // PLY file, required by the mesh scene
	GridSize    int     // Sphere grid size, default 10
}

// ErrMeshRequired is returned when the mesh scene is loaded without a PLY file
var ErrMeshRequired = errors.New("mesh scene needs a PLY file")

type builtinScene struct {
	description string
	build       func(opts Options, camera geometry.CameraConfig) (*Scene, error)
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Phong, mirror and glass spheres over a checkered ground",
		build: func(_ Options, camera geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(camera), nil
		},
	},
	"cornell-box": {
		description: "Cornell box with a mirror and a glass sphere",
		build: func(_ Options, camera geometry.CameraConfig) (*Scene, error) {
			return NewCornellScene(camera), nil
		},
	},
	"sphere-grid": {
		description: "Grid of rainbow-colored shiny spheres",
		build: func(opts Options, camera geometry.CameraConfig) (*Scene, error) {
			gridSize := opts.GridSize
			if gridSize <= 0 {
				gridSize = 10
			}
			return NewSphereGridScene(gridSize, camera), nil
		},
	},
	"triangle-mesh": {
		description: "Vertex-colored and smooth-shaded triangle meshes",
		build: func(_ Options, camera geometry.CameraConfig) (*Scene, error) {
			return NewTriangleMeshScene(camera), nil
		},
	},
	"textures": {
		description: "Diffuse, gloss and reflection texture mapping",
		build: func(opts Options, camera geometry.CameraConfig) (*Scene, error) {
			var image *material.Texture
			if opts.TexturePath != "" {
				var err error
				if image, err = loaders.LoadTexture(opts.TexturePath); err != nil {
					return nil, err
				}
			}
			return NewTextureScene(image, camera), nil
		},
	},
	"mesh": {
		description: "PLY mesh given with -mesh, on a ground square",
		build: func(opts Options, camera geometry.CameraConfig) (*Scene, error) {
			if opts.MeshPath == "" {
				return nil, ErrMeshRequired
			}
			mesh, err := loaders.LoadPLYMesh(opts.MeshPath, NewMeshMaterial())
			if err != nil {
				return nil, err
			}
			return NewMeshScene(mesh, camera), nil
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, builtin := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        titleCase(id),
			Description: builtin.description,
		})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Load builds the built-in scene id, applies opts and preprocesses it. Every
// failure is a *core.SceneLoadError and no scene is returned with it.
func Load(id string, opts Options) (*Scene, error) {
	builtin, ok := builtinScenes[id]
	if !ok {
		return nil, &core.SceneLoadError{Scene: id, Err: fmt.Errorf("unknown scene (have %s)", strings.Join(sceneIDs(), ", "))}
	}

	camera := geometry.CameraConfig{AspectRatio: opts.AspectRatio}
	s, err := builtin.build(opts, camera)
	if err != nil {
		return nil, &core.SceneLoadError{Scene: id, Err: err}
	}

	if opts.CubeMapPath != "" {
		environment, err := loaders.LoadCubeMapDir(opts.CubeMapPath)
		if err != nil {
			return nil, &core.SceneLoadError{Scene: id, Err: err}
		}
		s.SetEnvironment(environment)
	}

	if err := s.Preprocess(); err != nil {
		return nil, &core.SceneLoadError{Scene: id, Err: err}
	}

	log.S(log.Info, "Scene loaded",
		log.Str("scene", id),
		log.Any("primitives", s.GetPrimitiveCount()),
		log.Any("lights", len(s.Lights())))
	return s, nil
}

func sceneIDs() []string {
	ids := make([]string, 0, len(builtinScenes))
	for id := range builtinScenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
