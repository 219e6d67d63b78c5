package main

import (
	"context"
	"net"

	"github.com/coder/websocket"
)

// wsListener implements net.Listener over websockets accepted by an HTTP
// handler, so an irpc server can Serve them like TCP connections.
type wsListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func newWSListener(ctx context.Context, addr string) *wsListener {
	ctx, cancel := context.WithCancel(ctx)
	return &wsListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// push hands c over to Accept. It fails once the listener is closed.
func (l *wsListener) push(c *websocket.Conn) error {
	select {
	case l.ch <- c:
		return nil
	case <-l.ctx.Done():
		return net.ErrClosed
	}
}

// Accept returns the next pushed websocket as a binary stream. Closing the
// listener closes every connection it returned.
func (l *wsListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Addr() net.Addr {
	return l.addr
}

func (l *wsListener) Close() error {
	l.cancel()
	return nil
}

type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
