// Package pkg provides the libraries behind roadmap, a timeline engine for
// epics, features and milestones.
//
// # Overview
//
// Given a snapshot of work items, the host's settings and its scroll
// position, the engine computes everything a renderer needs to draw one
// frame of a scrollable timeline: the date window, the date/pixel mapping,
// the stacked rows, the dependency connectors and which rows and columns
// are worth drawing. The pkg directory is organized into these areas:
//
//  1. [core] - Engine (calendar math, date mapping, rows, connectors, culling)
//  2. [pipeline] - Orchestration (load → window → rows → cull → route)
//  3. [frame] - The serialized output of one cycle, plus frame stores
//  4. [source] - Item sources (files, SQLite, MongoDB, HTTP)
//  5. [cache], [session], [settings] - Infrastructure and configuration
//
// # Architecture
//
// The data flow of one update cycle:
//
//	Item source (file, database, URL)
//	         ↓
//	    [core/item] (records → typed items)
//	         ↓
//	    [core/timeline] (window + date/pixel mapper)
//	         ↓
//	    [core/rows] (grouping, filtering, collapse, y positions)
//	         ↓
//	    [core/viewport] (visible rows and columns)
//	         ↓
//	    [core/connector] (parent and predecessor routes)
//	         ↓
//	    [frame.Frame] (JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/roadmap/pkg/pipeline"
//	    "github.com/matzehuels/roadmap/pkg/source"
//	)
//
//	src, _ := source.Open(ctx, "items.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, src, pipeline.Options{})
//	fmt.Println(len(res.Frame.Rows), "rows")
//
// # Main Packages
//
// ## Engine
//
//   - [core/calendar]: Day arithmetic independent of time zones and DST
//   - [core/timeline]: Scales, zoom levels, windows, ticks and the mapper
//   - [core/rows]: The row stack for a grouping mode and collapse state
//   - [core/connector]: Orthogonal routes between related rows
//   - [core/viewport]: Row and column culling
//
// ## Host Support
//
//   - [pipeline]: One cycle, cached and observed
//   - [source]: Loading item snapshots
//   - [frame]: Frame serialization and named frame stores
//   - [cache]: Null, file and Redis frame caches
//   - [session]: View state persisted between browser runs
//   - [httputil]: Fetching remote snapshots with retries
//   - [observability]: Hooks for metrics and tracing
//   - [errors]: Coded errors and input validation
//   - [buildinfo]: Version information
package pkg
