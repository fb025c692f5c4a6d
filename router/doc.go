// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines all HTTP routes using Go 1.22+ method routing.

# Routes

Owner operations (X-Owner-Key header):

	POST /projects                 Create a project, returns owner key + share code
	GET  /projects/{id}/admin      Owner view with aggregates
	POST /projects/{id}/archive    One-way active → archived

Public, share-code scoped (anonymous):

	GET  /p/{code}                 Project by share code (increments views)
	GET  /p/{code}/reviews         Published reviews, ?sort=recent|highest|lowest|helpful
	GET  /p/{code}/review-status   Whether this client already reviewed
	POST /p/{code}/reviews         Submit a review (rating + text + consent)

	POST /reviews/{id}/helpful     Mark a review helpful (once per client)

	GET  /leaderboard              Top projects, ?window=all|week|month

All routes are wrapped with logging middleware. The share code is the only
public handle for a project; internal IDs appear only on owner routes.
*/
package router
