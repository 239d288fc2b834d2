package client

import (
	"chaindict/interface/redis"
	"chaindict/lib/utils"
	"context"
	"errors"

	pool "github.com/jolestar/go-commons-pool/v2"
)

type connectionFactory struct {
	addr     string
	password string
}

func (f *connectionFactory) MakeObject(_ context.Context) (*pool.PooledObject, error) {
	cli, err := NewClient(f.addr)
	if err != nil {
		return nil, err
	}
	cli.Start()
	if f.password != "" {
		reply := cli.Send(utils.StringsToLine("AUTH", f.password))
		if errReply, ok := reply.(redis.ErrorReply); ok {
			cli.Close()
			return nil, errors.New(errReply.Error())
		}
	}
	return pool.NewPooledObject(cli), nil
}

func (f *connectionFactory) DestroyObject(_ context.Context, obj *pool.PooledObject) error {
	cli, ok := obj.Object.(*Client)
	if !ok {
		return errors.New("type mismatch")
	}
	cli.Close()
	return nil
}

func (f *connectionFactory) ValidateObject(_ context.Context, obj *pool.PooledObject) bool {
	cli, ok := obj.Object.(*Client)
	return ok && cli.isRunning()
}

func (f *connectionFactory) ActivateObject(_ context.Context, _ *pool.PooledObject) error {
	return nil
}

func (f *connectionFactory) PassivateObject(_ context.Context, _ *pool.PooledObject) error {
	return nil
}

// Pool 是到同一个服务器的 Client 连接池
type Pool struct {
	objects *pool.ObjectPool
}

// NewPool 创建最多持有 size 个连接的连接池，password 非空时每个新连接都会先执行 AUTH
func NewPool(addr string, password string, size int) *Pool {
	ctx := context.Background()
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = size
	cfg.MaxIdle = size
	cfg.TestOnBorrow = true
	return &Pool{
		objects: pool.NewObjectPool(ctx, &connectionFactory{
			addr:     addr,
			password: password,
		}, cfg),
	}
}

// Exec 借出一个连接执行 line，连接池已满时阻塞直到 ctx 结束
func (p *Pool) Exec(ctx context.Context, line redis.Line) (redis.Reply, error) {
	obj, err := p.objects.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	cli := obj.(*Client)
	reply := cli.Send(line)
	if !cli.isRunning() {
		_ = p.objects.InvalidateObject(ctx, cli)
		return nil, errors.New("connection lost: " + string(reply.GetBytes()))
	}
	if err = p.objects.ReturnObject(ctx, cli); err != nil {
		return nil, err
	}
	return reply, nil
}

func (p *Pool) Close() {
	p.objects.Close(context.Background())
}
