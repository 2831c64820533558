package generative

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/fernwald/espalier/pkg/domain"
)

// Typed views of the per-ability output contracts. Parsed objects are
// decoded into these and validated for diagnostics; a violation is logged
// but the parsed value is still stored, since only unparseable text is an
// error under the validation contract.

type entities struct {
	Software   *string `mapstructure:"software"`
	Action     *string `mapstructure:"action"`
	Error      *string `mapstructure:"error"`
	EmailValid bool    `mapstructure:"email_valid"`
}

type enrichment struct {
	SLA               string `mapstructure:"sla" validate:"required,oneof=Gold Silver Bronze"`
	PreviousTickets   int    `mapstructure:"previous_tickets" validate:"gte=0"`
	AvgResolutionTime string `mapstructure:"avg_resolution_time" validate:"required"`
}

type kbResult struct {
	Found          bool   `mapstructure:"found"`
	ArticleTitle   string `mapstructure:"article_title" validate:"required_if=Found true"`
	ArticleExcerpt string `mapstructure:"article_excerpt"`
}

type escalation struct {
	Escalate bool `mapstructure:"escalate"`
}

type ticketUpdate struct {
	Status   string `mapstructure:"status" validate:"omitempty,oneof=open pending resolved"`
	Priority string `mapstructure:"priority" validate:"omitempty,oneof=low medium high"`
	Notes    string `mapstructure:"notes"`
}

type ticketClosure struct {
	TicketID        int    `mapstructure:"ticket_id"`
	Status          string `mapstructure:"status" validate:"omitempty,oneof=closed"`
	ResolutionNotes string `mapstructure:"resolution_notes"`
}

type apiCallResult struct {
	Success bool   `mapstructure:"success"`
	API     string `mapstructure:"api" validate:"required"`
	Details string `mapstructure:"details"`
}

type notification struct {
	Success        bool   `mapstructure:"success"`
	NotificationID string `mapstructure:"notification_id" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkContract decodes a parsed object into the ability's typed contract
// and validates it. Unknown abilities and non-object results pass.
func checkContract(ability string, value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if domain.IsErrorValue(m) {
		return nil
	}
	if _, skipped := isSkipped(m); skipped {
		return nil
	}

	var target any
	switch ability {
	case "extract_entities":
		target = &entities{}
	case "enrich_records":
		target = &enrichment{}
	case "knowledge_base_search":
		target = &kbResult{}
	case "escalation_decision":
		target = &escalation{}
	case "update_ticket":
		target = &ticketUpdate{}
	case "close_ticket":
		target = &ticketClosure{}
	case "execute_api_calls":
		target = &apiCallResult{}
	case "trigger_notifications":
		target = &notification{}
	default:
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("contract decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("decode %s output: %w", ability, err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("validate %s output: %w", ability, err)
	}
	return nil
}
