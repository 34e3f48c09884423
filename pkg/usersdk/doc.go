/*
Package usersdk provides a client SDK and the shared wire types for the Integra
users service.

# Overview

The service registers accounts, authenticates them and issues HS256 bearer
tokens whose "role" claims drive access to the administrative endpoints. The
request types in this package carry their own Validate methods so the server
and any client apply the same field rules.

# Usage

	c := usersdk.NewClient("http://localhost:8080")

	if _, err := c.Register(ctx, usersdk.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Anders",
		Password:  "Secret1!",
	}); err != nil {
		return err
	}

	login, err := c.Login(ctx, usersdk.LoginRequest{Username: "alice", Password: "Secret1!"})
	if err != nil {
		return err
	}

	users, err := c.WithToken(login.Token).ListUsers(ctx)

# Errors

Non-2xx responses are returned as *APIError carrying the status code, the
message and, for validation failures, per-field details.
*/
package usersdk
