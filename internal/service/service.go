// Package service holds the orphanage business rules.
//
// Handlers call it with validated requests. It coordinates photo storage,
// the repository transaction, the list cache and the post-create side
// effects.
package service
