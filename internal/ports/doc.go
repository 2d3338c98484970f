// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by inbound
// adapters and reactors. Client ports are implemented by outbound adapters
// (event journal, event bus, ACL clients) and called by the application layer.
package ports
