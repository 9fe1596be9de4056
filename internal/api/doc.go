// Package api holds transport concerns shared by the HUD service and its
// clients.
//
// The grpc/metadata subpackage carries request correlation and consumer
// identity across the gRPC boundary. Service implementations live with their
// service under internal/services/<name>/api.
package api
