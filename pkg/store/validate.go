package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/almas-industries/techplan/pkg/core/views"
)

// ErrInvalidDataset is wrapped by every ingestion validation failure
var ErrInvalidDataset = errors.New("invalid dataset")

type WarningKind string

const (
	WarningDanglingTechnician WarningKind = "dangling_technician"
	WarningSlotCollision      WarningKind = "slot_collision"
)

// Warning is a data problem the dashboard tolerates but should surface
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Validate checks a dataset at the ingestion boundary. Unknown statuses, end
// before start, negative travel time, sent emails without sentAt, failed emails
// without an error and duplicate ids are rejected; all of them are reported
// together. Appointments pointing at unknown technicians and appointments
// sharing a week-grid slot (judged in loc) only produce warnings.
func Validate(ds *Dataset, loc *time.Location) ([]Warning, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", ErrInvalidDataset)
	}

	var problems []error
	if err := validate.Struct(ds); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("dataset validation failed: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}
	problems = append(problems, duplicateIDs(ds)...)

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(problems...))
	}

	return collectWarnings(ds, loc), nil
}

// Ingest loads a dataset from src, fills in denormalised technician names and
// validates it. Warnings are logged and returned.
func Ingest(ctx context.Context, src Source, loc *time.Location, logger *zap.Logger) (*Dataset, []Warning, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	fillTechnicianNames(ds)

	warnings, err := Validate(ds, loc)
	if err != nil {
		return nil, nil, err
	}

	for _, w := range warnings {
		logger.Warn("Dataset warning", zap.String("kind", string(w.Kind)), zap.String("message", w.Message))
	}

	logger.Debug("Dataset ingested",
		zap.Int("technicians", len(ds.Technicians)),
		zap.Int("appointments", len(ds.Appointments)),
		zap.Int("emails", len(ds.EmailQueue)),
		zap.Int("warnings", len(warnings)))

	return ds, warnings, nil
}

func describeFieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Dataset.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: required", field)
	case "oneof":
		return fmt.Errorf("%s: unrecognised value %v (expected one of: %s)", field, fe.Value(), fe.Param())
	case "gtefield":
		return fmt.Errorf("%s: must not be before %s", field, fe.Param())
	case "required_if":
		return fmt.Errorf("%s: required when %s", field, strings.Replace(fe.Param(), " ", " is ", 1))
	case "min":
		return fmt.Errorf("%s: must be at least %s", field, fe.Param())
	default:
		return fmt.Errorf("%s: failed %s check", field, fe.Tag())
	}
}

func duplicateIDs(ds *Dataset) []error {
	var problems []error
	check := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				problems = append(problems, fmt.Errorf("duplicate %s id %q", kind, id))
			}
			seen[id] = true
		}
	}

	techIDs := make([]string, len(ds.Technicians))
	for i, t := range ds.Technicians {
		techIDs[i] = t.ID
	}
	apptIDs := make([]string, len(ds.Appointments))
	for i, a := range ds.Appointments {
		apptIDs[i] = a.ID
	}
	emailIDs := make([]string, len(ds.EmailQueue))
	for i, e := range ds.EmailQueue {
		emailIDs[i] = e.ID
	}

	check("technician", techIDs)
	check("appointment", apptIDs)
	check("email", emailIDs)
	return problems
}

func collectWarnings(ds *Dataset, loc *time.Location) []Warning {
	if loc == nil {
		loc = time.Local
	}

	known := make(map[string]bool, len(ds.Technicians))
	for _, t := range ds.Technicians {
		known[t.ID] = true
	}

	warnings := []Warning{}
	for _, a := range ds.Appointments {
		if !known[a.TechnicianID] {
			warnings = append(warnings, Warning{
				Kind:    WarningDanglingTechnician,
				Message: fmt.Sprintf("appointment %q references unknown technician %q", a.ID, a.TechnicianID),
			})
		}
	}

	for _, c := range views.SlotCollisions(loc, ds.Appointments) {
		warnings = append(warnings, Warning{
			Kind: WarningSlotCollision,
			Message: fmt.Sprintf("technician %q has %d appointments at %s %02d:00 (%s); the week grid shows only %q",
				c.TechnicianID, len(c.AppointmentIDs), c.Day.Format("2006-01-02"), c.Hour,
				strings.Join(c.AppointmentIDs, ", "), c.AppointmentIDs[0]),
		})
	}

	return warnings
}

func fillTechnicianNames(ds *Dataset) {
	names := make(map[string]string, len(ds.Technicians))
	for _, t := range ds.Technicians {
		names[t.ID] = t.Name
	}
	for i := range ds.Appointments {
		if ds.Appointments[i].TechnicianName == "" {
			ds.Appointments[i].TechnicianName = names[ds.Appointments[i].TechnicianID]
		}
	}
}
