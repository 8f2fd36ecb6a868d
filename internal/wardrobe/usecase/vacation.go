package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/resolver"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/gcalendar"
)

const (
	opPlanVacation = "plan_vacation"
	maxTripDays    = 60
)

type aiPackingMeta struct {
	Quantity any `json:"quantity"`
	Reason   any `json:"reason"`
}

type aiVacationPlan struct {
	Packing []json.RawMessage `json:"packing"`
	Advice  any               `json:"advice"`
}

// PlanVacation builds a packing list from the caller's wardrobe. Packing
// entries are resolved with exact matching only.
func (uc *implUseCase) PlanVacation(ctx context.Context, sc model.Scope, input wardrobe.PlanVacationInput) (wardrobe.PlanVacationOutput, error) {
	input.Destination = strings.TrimSpace(input.Destination)
	if input.Destination == "" {
		return wardrobe.PlanVacationOutput{}, wardrobe.ErrEmptyDestination
	}

	base := uc.now().In(uc.dateMath.Location())
	start, err := uc.dateMath.ParseDate(input.StartDate, base)
	if err != nil {
		return wardrobe.PlanVacationOutput{}, fmt.Errorf("%w: start: %v", wardrobe.ErrInvalidDateRange, err)
	}
	end, err := uc.dateMath.ParseDate(input.EndDate, base)
	if err != nil {
		return wardrobe.PlanVacationOutput{}, fmt.Errorf("%w: end: %v", wardrobe.ErrInvalidDateRange, err)
	}
	days := uc.dateMath.DaysBetween(start, end)
	if days == 0 || days > maxTripDays {
		return wardrobe.PlanVacationOutput{}, wardrobe.ErrInvalidDateRange
	}

	inv, err := uc.inventory(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.PlanVacation.inventory: %v", err)
		return wardrobe.PlanVacationOutput{}, err
	}

	out := wardrobe.PlanVacationOutput{
		Destination: input.Destination,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Packing:     []wardrobe.PackingEntry{},
	}
	if len(inv.Items) == 0 {
		return out, nil
	}

	prompt := buildVacationPrompt(inv, input, start.Format(datemath.ISODateLayout), end.Format(datemath.ISODateLayout), days)
	cleaned, err := uc.generate(ctx, opPlanVacation, systemStylist, prompt, 0.4)
	if err != nil {
		return wardrobe.PlanVacationOutput{}, err
	}

	var plan aiVacationPlan
	if strings.HasPrefix(cleaned, "[") {
		err = json.Unmarshal([]byte(cleaned), &plan.Packing)
	} else {
		err = json.Unmarshal([]byte(cleaned), &plan)
	}
	if err != nil {
		return wardrobe.PlanVacationOutput{}, uc.badResponse(ctx, opPlanVacation, cleaned, err)
	}

	for _, raw := range plan.Packing {
		var ref wardrobe.OutfitItem
		if err := json.Unmarshal(raw, &ref); err != nil || ref.IsEmpty() {
			continue
		}
		var meta aiPackingMeta
		_ = json.Unmarshal(raw, &meta)

		out.Packing = append(out.Packing, wardrobe.PackingEntry{
			Resolved: uc.resolve(resolver.ChainVacation, ref, inv),
			Quantity: looseInt(meta.Quantity, 1),
			Reason:   looseString(meta.Reason),
		})
	}
	out.Advice = looseString(plan.Advice)

	if input.ExportToCalendar {
		out.CalendarLink = uc.tryExportTrip(ctx, out)
	}

	uc.l.Infof(ctx, "PlanVacation: user=%s destination=%q days=%d entries=%d", sc.UserID, out.Destination, out.Days, len(out.Packing))
	return out, nil
}

// tryExportTrip creates an all-day calendar event for the trip.
// Returns the event link, or empty string on failure.
func (uc *implUseCase) tryExportTrip(ctx context.Context, plan wardrobe.PlanVacationOutput) string {
	if uc.calendar == nil {
		return ""
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     fmt.Sprintf("Voyage : %s", plan.Destination),
		Description: buildPackingDescription(plan),
		Location:    plan.Destination,
		StartTime:   plan.StartDate,
		EndTime:     plan.EndDate,
		Timezone:    uc.timezone,
		AllDay:      true,
	})
	if err != nil {
		uc.l.Warnf(ctx, "PlanVacation: calendar export failed for %q (non-fatal): %v", plan.Destination, err)
		return ""
	}
	return event.HtmlLink
}

func buildPackingDescription(plan wardrobe.PlanVacationOutput) string {
	var sb strings.Builder
	sb.WriteString("Packing list:\n")
	for _, e := range plan.Packing {
		label := e.Resolved.Reference.Description
		switch {
		case e.Resolved.Item != nil:
			label = oneLine(e.Resolved.Item.Analysis)
		case e.Resolved.Set != nil:
			label = e.Resolved.Set.Name
		}
		if label == "" {
			label = e.Resolved.Reference.ID
		}
		sb.WriteString(fmt.Sprintf("- %dx %s\n", e.Quantity, label))
	}
	if plan.Advice != "" {
		sb.WriteString("\n")
		sb.WriteString(plan.Advice)
	}
	return strings.TrimSpace(sb.String())
}
