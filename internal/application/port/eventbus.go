package port

// EventBusFunc receives parsed event payloads forwarded out of the connect
// flow. The payload shape is consumer-defined and deliberately untyped at
// this boundary. Invoked zero or more times, once per successfully routed
// forward-to-host message.
type EventBusFunc func(payload map[string]any)
