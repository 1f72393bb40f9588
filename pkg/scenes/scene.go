package scenes

import (
	"math/rand/v2"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Deps bundles the long-lived services shared by every scene.
type Deps struct {
	SceneManager *game.SceneManager
	Config       *config.GameConfig
	Audio        game.AudioPlayer
	Scores       *game.ScoreStore
	Rand         *rand.Rand // questions and target selection for every session
}

// NewSceneFactory returns the factory the SceneManager uses to build scenes by ID.
func NewSceneFactory(deps Deps) game.SceneFactory {
	return func(id game.SceneID, params game.SceneParams) game.Scene {
		switch id {
		case game.SceneNameEntry:
			return NewNameEntryScene(deps, params.Username)
		case game.ScenePlay:
			return NewPlayScene(deps, params.Username)
		case game.SceneGameOver:
			return NewGameOverScene(deps, params)
		case game.SceneTutorial:
			return NewTutorialScene(deps, params.Username)
		default:
			return nil
		}
	}
}
