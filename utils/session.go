// File: utils/session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const PatientSessionPrefix = "patientSession:"

// PatientSession is the explicit session context handed to components instead
// of ambient global storage. It is loaded once per request from the bearer
// token and cleared when the credential expires.
type PatientSession struct {
	PatientID     string    `json:"patientId"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Token         string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SavePatientSession saves the session context in Redis with a TTL.
func SavePatientSession(client *redis.Client, session PatientSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal patient session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, PatientSessionPrefix+session.PatientID, data, time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save patient session: %w", err)
	}
	return nil
}

// LoadPatientSession retrieves the session context from Redis.
func LoadPatientSession(client *redis.Client, patientID string) (*PatientSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, PatientSessionPrefix+patientID).Result()
	if err != nil {
		return nil, err
	}
	var session PatientSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patient session: %w", err)
	}
	return &session, nil
}

// ClearPatientSession removes the session context, e.g. after an expired credential.
func ClearPatientSession(client *redis.Client, patientID string) error {
	ctx := context.Background()
	return client.Del(ctx, PatientSessionPrefix+patientID).Err()
}
