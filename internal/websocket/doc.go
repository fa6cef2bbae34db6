// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package websocket implements the realtime transport: a hub that
// fans location updates out to every connected session, and a client
// that pumps messages between one gorilla/websocket connection and
// the hub.
//
// Message flow:
//
//	device --send-location--> client.readPump --> ingest pipeline
//	pipeline outcome --> hub.BroadcastLocation --> every client.send
//	speed alert --> hub.Notify --> originating client.send only
//
// Delivery is best-effort. A session whose send buffer is full is
// disconnected rather than allowed to stall the fan-out loop, and a
// full broadcast queue drops the message. There is no replay: a
// session that reconnects starts from the next live update.
package websocket
