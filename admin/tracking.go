package admin

import (
	"context"
	"fmt"
	"strings"

	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

// TrackingInput is what the admin typed into the tracking form.
type TrackingInput struct {
	Info        models.TrackingInfo
	HandlerName string
}

// SubmitTracking updates the tracking block and then the handler name, each
// only when given. The backend has no single call for both, so if the
// handler call fails after the tracking call succeeded, the previous
// tracking block is written back and a *PartialUpdateError says which half
// went through and whether the rollback worked.
func (d *Detail[T]) SubmitTracking(ctx context.Context, in TrackingInput) error {
	hooks := d.cfg.Tracking
	if hooks == nil {
		return ErrUnsupported
	}
	in.HandlerName = strings.TrimSpace(in.HandlerName)
	hasTracking, hasHandler := !in.Info.IsZero(), in.HandlerName != ""

	d.mu.Lock()
	if d.state != StateReady {
		d.mu.Unlock()
		return ErrNotReady
	}
	if d.actions[ActionTracking] == ActionSubmitting {
		d.mu.Unlock()
		return ErrBusy
	}
	d.form.Tracking, d.form.Handler = in.Info, in.HandlerName
	if !hasTracking && !hasHandler {
		d.mu.Unlock()
		err := &ValidationError{Field: "tracking", Message: "En az bir takip bilgisi ya da görevli adı girilmelidir."}
		d.fb.Invalid(err.Message)
		return err
	}
	var previous models.TrackingInfo
	if hooks.Current != nil {
		previous, _ = hooks.Current(d.item)
	}
	id, _ := d.begin(ActionTracking)
	d.mu.Unlock()

	if hasTracking {
		err := hooks.UpdateTracking(ctx, id, in.Info)
		if ctx.Err() != nil {
			d.finish(ActionTracking, ActionEditing)
			return ctx.Err()
		}
		if err != nil {
			d.finish(ActionTracking, ActionFailed)
			d.record(id, ActionTracking, session.OutcomeFailed, err.Error())
			d.fb.Failure("Takip bilgisi güncellenemedi", err)
			return err
		}
	}

	if hasHandler {
		err := hooks.UpdateHandler(ctx, id, in.HandlerName)
		if ctx.Err() != nil {
			d.finish(ActionTracking, ActionEditing)
			return ctx.Err()
		}
		if err != nil {
			if !hasTracking {
				d.finish(ActionTracking, ActionFailed)
				d.record(id, ActionTracking, session.OutcomeFailed, err.Error())
				d.fb.Failure("Görevli adı güncellenemedi", err)
				return err
			}
			return d.compensate(ctx, id, previous, err)
		}
	}

	d.resync(ctx, id, loadResync)
	d.finish(ActionTracking, ActionEditing)
	d.record(id, ActionTracking, session.OutcomeSuccess, in.Info.TrackingCode)
	d.fb.Success("Takip bilgisi güncellendi", fmt.Sprintf("#%d için takip bilgileri kaydedildi.", id))
	return nil
}

func (d *Detail[T]) compensate(ctx context.Context, id int64, previous models.TrackingInfo, cause error) error {
	perr := &PartialUpdateError{Succeeded: []string{"takip bilgisi"}, Failed: "görevli adı", Err: cause}
	if cerr := d.cfg.Tracking.UpdateTracking(ctx, id, previous); cerr != nil {
		perr.CompensationErr = cerr
	} else {
		perr.Compensated = true
	}

	outcome := session.OutcomePartial
	if perr.Compensated {
		outcome = session.OutcomeCompensated
	}
	d.fb.logger.Warn().
		Err(cause).
		Str("resource", d.cfg.Resource).
		Int64("id", id).
		Bool("compensated", perr.Compensated).
		Msg("tracking update partially failed")

	// Show the server's view of the record but keep what the admin typed.
	d.resync(ctx, id, loadKeepForm)
	d.finish(ActionTracking, ActionFailed)
	d.record(id, ActionTracking, outcome, perr.Error())
	d.fb.Failure("Takip bilgisi kısmen güncellendi", perr)
	return perr
}
