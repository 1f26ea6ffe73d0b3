package application

import "expvar"

// Published at /api/debug/vars.
var (
	usersRegistered = expvar.NewInt("users_registered")
	loginsSucceeded = expvar.NewInt("logins_succeeded")
	loginsFailed    = expvar.NewInt("logins_failed")
	coursesWritten  = expvar.NewInt("course_writes")
)
