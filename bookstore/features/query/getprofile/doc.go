// Package getprofile implements the Get Profile query use case. Profiles are private to their owner.
package getprofile
