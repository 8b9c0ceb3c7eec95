// Package frame defines the serialized output of one engine cycle.
//
// A [Frame] is everything a renderer needs to draw the timeline for one
// settings/viewport state: the row stack with absolute y-offsets, per-row
// visibility, the bar or milestone box of each dated row, routed connectors
// tagged by family, the culled header ticks and the window geometry. It is
// the canonical wire format for JSON files, HTTP responses and cached
// results.
//
// # Serialization
//
//	data, _ := frame.Marshal(f)          // Frame → []byte
//	f, _ := frame.Unmarshal(data)        // []byte → Frame
//	frame.WriteFile(f, "plan.json")      // atomic write
//	f, _ = frame.ReadFile("plan.json")
//
// # Storage
//
// Named frames can be kept in a [Store]: [DirStore] keeps one JSON file per
// name, [MongoStore] keeps one document per name in a collection.
package frame
