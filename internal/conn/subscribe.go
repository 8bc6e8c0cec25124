package conn

import "encoding/json"

// SubscribeEvent is the socket.io event name that requests statistics.
const SubscribeEvent = "subscribe stats"

type subscribeArgs struct {
	Key string `json:"key,omitempty"`
}

// SubscribeFrame returns the socket.io event frame requesting statistics.
func SubscribeFrame(accessKey string) string {
	body, _ := json.Marshal([]interface{}{SubscribeEvent, subscribeArgs{Key: accessKey}})
	return "42" + string(body)
}
