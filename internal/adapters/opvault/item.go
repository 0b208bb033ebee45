package opvault

import (
	"encoding/json"

	"go.husk.sh/husk/internal/core/domain"
	"go.trai.ch/zerr"
)

// itemPayload mirrors the JSON op prints for `get item`. The details object
// is one of two shapes, a bare password or a login field list; decoding both
// into one struct keeps whichever keys are present.
type itemPayload struct {
	UUID      string          `json:"uuid"`
	VaultUUID string          `json:"vaultUuid"`
	Overview  overviewPayload `json:"overview"`
	Details   detailsPayload  `json:"details"`
}

type overviewPayload struct {
	Title string `json:"title"`
	AInfo string `json:"ainfo"`
}

type detailsPayload struct {
	Password string         `json:"password"`
	Fields   []fieldPayload `json:"fields"`
}

type fieldPayload struct {
	Designation string `json:"designation"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       string `json:"value"`
}

// decodeItem parses an op item payload into the domain representation.
func decodeItem(payload []byte) (*domain.VaultItem, error) {
	var dto itemPayload
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal item payload")
	}

	fields := make([]domain.VaultField, 0, len(dto.Details.Fields))
	for _, f := range dto.Details.Fields {
		fields = append(fields, domain.VaultField{
			Designation: f.Designation,
			Name:        f.Name,
			Type:        f.Type,
			Value:       f.Value,
		})
	}

	return &domain.VaultItem{
		UUID:      dto.UUID,
		VaultUUID: dto.VaultUUID,
		Title:     dto.Overview.Title,
		Info:      dto.Overview.AInfo,
		Details: domain.VaultDetails{
			Password: dto.Details.Password,
			Fields:   fields,
		},
	}, nil
}
