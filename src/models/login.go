package models

import "strings"

type LoginRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Broker   BrokerName `json:"broker"`
}

// LoginForm holds the raw login form fields, keyed by their element ids.
type LoginForm struct {
	Username string `schema:"username-input"`
	Password string `schema:"password-input"`
	Broker   string `schema:"broker-name"`
}

func (f LoginForm) ToRequest() (LoginRequest, error) {
	req := LoginRequest{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
		Broker:   BrokerName(strings.TrimSpace(f.Broker)),
	}

	if err := req.Validate(); err != nil {
		return LoginRequest{}, err
	}

	return req, nil
}

func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return UsernameRequiredErr
	}

	if r.Password == "" {
		return PasswordRequiredErr
	}

	if r.Broker == "" {
		return BrokerRequiredErr
	}

	return nil
}
