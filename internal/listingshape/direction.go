// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listingshape

import (
	"github.com/google/uuid"

	"marketkit/internal/models"
)

// Listing directions.
const (
	DirectionOffer   = "offer"
	DirectionRequest = "request"
)

// DirectionMap joins shapes to their transaction processes and maps every
// shape id to "offer" when the process author is the seller, otherwise to
// "request". Shapes without a matching process are left out.
func DirectionMap(shapes []models.ListingShape, processes []models.TransactionProcess) map[uuid.UUID]string {
	directions := make(map[uuid.UUID]string, len(shapes))
	for _, s := range shapes {
		for _, p := range processes {
			if s.TransactionProcessID == p.ID {
				directions[s.ID] = ProcessDirection(p)
			}
		}
	}
	return directions
}

// ProcessDirection returns the listing direction implied by a process.
func ProcessDirection(p models.TransactionProcess) string {
	if p.AuthorIsSeller {
		return DirectionOffer
	}
	return DirectionRequest
}
