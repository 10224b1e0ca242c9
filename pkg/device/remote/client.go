package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"imgseq/pkg/proto"
)

// New dials a display served by Proxy.
func New(addr string) (proto.Display, error) {
	client, err := rpc.DialHTTPPath("tcp", addr, Path)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Startup() error {
	return c.rpc.Call("Service.Command", "startup", &EmptyResponse{})
}

func (c *Client) Shutdown() error {
	return c.rpc.Call("Service.Command", "shutdown", &EmptyResponse{})
}

func (c *Client) DrawBitmap(posX uint16, posY uint16, image image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image); err != nil {
		return err
	}

	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{
		PosX:  posX,
		PosY:  posY,
		Image: buf.Bytes(),
	}, &EmptyResponse{})
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
