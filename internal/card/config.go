package card

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// CaptionInvite is the trigger caption while the panel is closed.
	CaptionInvite = "Click right here"
	// CaptionAcknowledged is the trigger caption once the message is open.
	CaptionAcknowledged = "I love you!"
)

var validate = validator.New()

// Config is fixed at startup and not user-adjustable.
type Config struct {
	AudioVolume   float64 `json:"audioVolume" validate:"gte=0,lte=1"`
	HeartCount    int     `json:"heartCount" validate:"gte=0,lte=500"`
	ConfettiCount int     `json:"confettiCount" validate:"gte=0,lte=2000"`
	// TypingDelay is the pause before each revealed character.
	TypingDelay time.Duration `json:"typingDelay" validate:"gt=0"`
	// AnimationDuration is the lifetime of transient particles.
	AnimationDuration time.Duration `json:"animationDuration" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		AudioVolume:       0.3,
		HeartCount:        15,
		ConfettiCount:     50,
		TypingDelay:       30 * time.Millisecond,
		AnimationDuration: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid card config: %w", err)
	}
	return nil
}
