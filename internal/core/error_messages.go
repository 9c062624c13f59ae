package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Patterns are matched using strings.Contains, so partial matches work.
// The first matching pattern wins, so more specific patterns come before
// general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// These errors occur when the uploaded file cannot be read or parsed.
	// =========================================================================
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload an .xlsx, .xlsm, or .csv file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no header row",
		msg: UserMessage{
			Message: "No column headers were found in the file",
			Action:  "Make sure the first non-empty row contains column names",
			Code:    "FILE002",
		},
	},
	{
		pattern: "workbook has no sheets",
		msg: UserMessage{
			Message: "The workbook contains no sheets",
			Action:  "Add a sheet with a header row and data",
			Code:    "FILE003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE004",
		},
	},
	{
		pattern: "zip",
		msg: UserMessage{
			Message: "The file is not a valid Excel workbook",
			Action:  "Re-export the file from your spreadsheet application",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Profile and Report Errors (PRO001, REP001)
	// =========================================================================
	{
		pattern: "unknown profile",
		msg: UserMessage{
			Message: "The requested validation profile does not exist",
			Action:  "Pick a profile from the profile list",
			Code:    "PRO001",
		},
	},
	{
		pattern: "report not found",
		msg: UserMessage{
			Message: "The report is missing or has expired",
			Action:  "Run the validation again",
			Code:    "REP001",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
