package models

import "github.com/google/uuid"

type TokenPair struct {
	AdminID      uuid.UUID `json:"admin_id"`
	SessionID    string    `json:"session_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type TokenMeta struct {
	AdminID   string `json:"uid"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	Type      string `json:"typ"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
