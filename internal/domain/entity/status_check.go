package entity

import "time"

type StatusCheck struct {
	ID         string    `json:"id" firestore:"id"`
	ClientName string    `json:"client_name" firestore:"clientName"`
	Timestamp  time.Time `json:"timestamp" firestore:"timestamp"`
}
