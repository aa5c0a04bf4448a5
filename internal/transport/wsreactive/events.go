// If you are AI: This file implements the reactive transport's JSON
// control dialect. Grounded on evowebsocket.c's evowebsocket_send_event,
// which builds a cJSON object with eventType/requestId/timeStamp and
// writes it as a text frame.
package wsreactive

import "encoding/json"

// controlEvent is the wire shape of the PLAY/PING control messages this
// transport sends on CLIENT_ESTABLISHED and CLIENT_WRITEABLE.
type controlEvent struct {
	EventType string `json:"eventType"`
	RequestID uint32 `json:"requestId"`
	TimeStamp int64  `json:"timeStamp"`
}

// encodeEvent marshals a PLAY or PING control event to its JSON wire form.
func encodeEvent(eventType string, requestID uint32, timeStampMillis int64) ([]byte, error) {
	return json.Marshal(controlEvent{
		EventType: eventType,
		RequestID: requestID,
		TimeStamp: timeStampMillis,
	})
}
