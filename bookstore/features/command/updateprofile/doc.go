// Package updateprofile implements the Update Profile use case.
//
// Users change their own language, display name, email, and contact phone number.
// Nobody can touch the profile of someone else.
package updateprofile
