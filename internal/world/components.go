package world

import (
	"github.com/yohamta/donburi"

	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/physics/planar"
)

// CharacterData is a controlled character.
type CharacterData struct {
	Name       string
	Controller *locomotion.Controller
	Body       *planar.Body
	Last       locomotion.Step // Result of the most recent tick
}

// Character is the component holding CharacterData.
var Character = donburi.NewComponentType[CharacterData]()

// DriverData feeds input to a character.
type DriverData struct {
	Feed input.Feed
}

// Driver is the component holding DriverData.
var Driver = donburi.NewComponentType[DriverData]()
