package pipeline

import (
	"context"
	"fmt"

	"github.com/docuseek/nlq/core"
)

// ProcessVoiceQuery transcribes audio through the speech collaborator
// and runs the recognized text through the pipeline. It fails fast when
// voice input is disabled.
func (o *Orchestrator) ProcessVoiceQuery(ctx context.Context, audio []byte, opts ProcessOptions) (*core.VoiceResult, *core.ProcessingResult, error) {
	if !o.Config().EnableVoiceInput {
		return nil, nil, fmt.Errorf("%w: voice input is disabled", core.ErrValidation)
	}
	if o.components.Speech == nil {
		return nil, nil, fmt.Errorf("%w: no speech collaborator configured", core.ErrComponentFailure)
	}
	if len(audio) == 0 {
		return nil, nil, fmt.Errorf("%w: empty audio payload", core.ErrValidation)
	}

	voice, err := o.components.Speech.Transcribe(ctx, audio, opts.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: transcription: %w", core.ErrComponentFailure, err)
	}

	result, err := o.ProcessQuery(ctx, voice.Recognized, opts)
	if err != nil {
		return voice, nil, err
	}
	return voice, result, nil
}
