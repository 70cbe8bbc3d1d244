package model

import "time"

type Session struct {
	Token    string    `json:"token"`
	LastSeen time.Time `json:"last_seen"`
}
