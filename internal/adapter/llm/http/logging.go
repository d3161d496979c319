package http

import (
	"fmt"
	"regexp"
)

// MaxLoggedResponseLength is the maximum length of response text to include
// in logs. Responses longer than this are truncated so job description and
// pack content does not leak into log aggregators.
const MaxLoggedResponseLength = 200

// TruncateForLogging safely truncates a response string for logging purposes.
func TruncateForLogging(response string) string {
	if len(response) <= MaxLoggedResponseLength {
		return response
	}
	return response[:MaxLoggedResponseLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(response))
}

var urlSecretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`key=([^&"\s]+)`),
	regexp.MustCompile(`apiKey=([^&"\s]+)`),
	regexp.MustCompile(`api_key=([^&"\s]+)`),
	regexp.MustCompile(`token=([^&"\s]+)`),
	regexp.MustCompile(`access_token=([^&"\s]+)`),
}

// RedactURLSecrets redacts API keys and other secrets from URLs in error
// messages before they are printed, so a failing request never echoes a
// credential.
//
// Example:
//
//	input:  "https://api.example.com/endpoint?key=secret123&foo=bar"
//	output: "https://api.example.com/endpoint?key=[REDACTED]&foo=bar"
func RedactURLSecrets(text string) string {
	if text == "" {
		return text
	}
	result := text
	for _, re := range urlSecretPatterns {
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			for i := range match {
				if match[i] == '=' {
					return match[:i] + "=[REDACTED]"
				}
			}
			return match
		})
	}
	return result
}
