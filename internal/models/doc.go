// Package models defines the JSON wire types exchanged between the
// rentkeeper client and the REST backend: users, vehicles, reservations,
// request bodies and response envelopes.
//
// Field names follow the camelCase shape the backend has always served,
// so both sides marshal these structs directly.
package models
