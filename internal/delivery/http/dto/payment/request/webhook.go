package request

import "encoding/json"

type WebhookRequest struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData carries the provider fields this service consumes.
type WebhookData struct {
	Reference string  `json:"reference"`
	ID        EventID `json:"id"`
	Message   string  `json:"message,omitempty"`
}

// EventID is the provider's transaction identifier. The provider sends it as
// a bare integer on live events but as a string in other payload variants,
// so both JSON tokens are accepted and carried as a string.
type EventID string

func (id *EventID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = EventID(n.String())
	return nil
}
