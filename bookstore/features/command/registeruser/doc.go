// Package registeruser implements the Register User use case.
//
// The identity provider vouches for a user ID; registering it stores the user together with a
// default profile. Registering an already registered ID again is an idempotent success, whatever
// username is sent the second time. A username can only be taken once.
package registeruser
