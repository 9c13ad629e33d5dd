// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains background job processing (Redis/Asynq), the notification
// email client (Resend), the Redis list cache and Kafka event publishing.
package lib
