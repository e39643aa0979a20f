// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !tamago

package console

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
)

// NewLocalCaller returns an RPC client served in-process by rcvr, over the
// same JSON-RPC encoding used by GoTEE between applet and monitor.
func NewLocalCaller(rcvr interface{}) (*rpc.Client, error) {
	server := rpc.NewServer()

	if err := server.Register(rcvr); err != nil {
		return nil, err
	}

	client, conn := net.Pipe()

	go server.ServeCodec(jsonrpc.NewServerCodec(conn))

	return jsonrpc.NewClient(client), nil
}
