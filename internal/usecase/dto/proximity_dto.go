package dto

import (
	"github.com/photomap-engine/internal/domain"
)

// ProximityDecision - решение триггера обзора "фотографии рядом".
// Overview заполнен только при ShouldOpen.
type ProximityDecision struct {
	ShouldOpen bool              `json:"should_open"`
	Overview   *domain.Overview  `json:"overview,omitempty"`
	TriggerKey domain.TriggerKey `json:"trigger_key"`
}
