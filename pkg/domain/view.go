package domain

import "time"

type VideoView struct {
	UserId  string
	VideoId string

	CreatedAt time.Time
	UpdatedAt time.Time
}
