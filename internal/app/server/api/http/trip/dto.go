package trip

import "payanam/internal/domain/trip"

type listOutput struct {
	Body []trip.Trip
}

type createInput struct {
	Body trip.Draft
}

type tripOutput struct {
	Body trip.Trip
}

type updateInput struct {
	ID   string `path:"id" doc:"Идентификатор поездки"`
	Body trip.Patch
}

type deleteInput struct {
	ID string `path:"id" doc:"Идентификатор поездки"`
}

type deleteOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message" example:"Trip deleted"`
}
