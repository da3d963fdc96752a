package domain

// domain package contains the Domain Models and Interfaces for the NewTube application.
//
// `domain/newtube` package exposes the root object bundling every repository.
// Entrypoints (the `serve` and `worker` commands) instantiate it and hand its parts to handlers and workflows.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and functions.
// For example, `domain/video.go` contains the `Video` entity and its read models.
//
// `domain/ENTITY/db` directory contains the relational representation of the entity:
// `db/ENTITY.go` is the client interface, `db/postgres` implements it and `db/mock` fakes it for handler tests.
//
// # Entities
//
// - `user`: a channel. Users are created from the authentication provider's webhook and identified there by ExternalId.
//
// - `video`: an upload. The binary lives on the video host (Mux); the row tracks its upload/asset/playback ids,
// the stored thumbnail and preview, and the metadata the creator edits in the studio.
//
// - `comment`: a comment on a video. Comments are threaded one level deep: a reply's parent is always top-level.
//
// - `reaction`: like or dislike, for videos and comments. One row per (user, target).
//
// - `view`: a video watched by a user. One row per (user, video).
//
// - `subscription`: viewer -> creator.
//
// - `playlist`: a named, ordered set of videos owned by a user.
//
// - `category`: a fixed vocabulary videos may be filed under.
//
// - `workflow`: a durable background run (AI title/description/thumbnail generation) made of journaled steps.
//
// # Pagination
//
// Every list is cursor-paginated. See `cursor.go`.
