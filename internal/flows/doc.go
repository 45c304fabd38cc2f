// Package flows holds the multi-step client protocols — the chained
// login and the avatar-aware upload — as pure orchestration over
// function-field dependency structs. The root package builds the deps
// once and delegates; nothing here touches HTTP or storage directly.
package flows
