package handlers

import (
	mechanicRepo "roadcare/database/repository/mechanic"
)

// HandlerBundle groups the endpoint handlers plus the repositories the route
// middleware needs.
type HandlerBundle struct {
	Mechanics mechanicRepo.MechanicRepository

	Requests      *RequestHandler
	Assignments   *AssignmentHandler
	Notifications *NotificationHandler
	Updates       *UpdateHandler
	Discovery     *DiscoveryHandler
	Staff         *MechanicHandler
	WS            *WebSocketHandler
	Uploads       *UploadHandler
}
