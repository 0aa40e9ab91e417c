package views

import "github.com/almas-industries/techplan/pkg/core/model"

// Tone is a presentation hint shared by every renderer
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
)

func AppointmentTone(s model.AppointmentStatus) Tone {
	switch s {
	case model.StatusConfirmed:
		return ToneSuccess
	case model.StatusCancelled:
		return ToneDanger
	case model.StatusBlocker:
		return ToneInfo
	default:
		return ToneWarning
	}
}

func EmailTone(s model.EmailStatus) Tone {
	switch s {
	case model.EmailSent:
		return ToneSuccess
	case model.EmailFailed:
		return ToneDanger
	default:
		return ToneWarning
	}
}
