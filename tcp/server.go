package tcp

import (
	"chaindict/interface/tcp"
	"chaindict/lib/logger"
	"context"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Config 保存 tcp 服务器的监听参数
type Config struct {
	Address string
}

// ListenAndServeWithSignal 监听中断信号，并且通过 closeChan 通知服务器关闭
func ListenAndServeWithSignal(cfg *Config, hr tcp.Handler) error {
	closeChan := make(chan struct{})
	signalChan := make(chan os.Signal, 1)
	// 只允许这 4 类信号传送到 signalChan
	signal.Notify(signalChan, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Infof("received signal %v", sig)
		close(closeChan)
	}()
	lr, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}
	logger.Infof("bind %s success, start listening...", cfg.Address)
	ListenAndServe(lr, hr, closeChan)
	return nil
}

// ListenAndServe 接受连接直到 lr 被关闭，返回前等待所有连接处理完毕
func ListenAndServe(lr net.Listener, hr tcp.Handler, closeChan <-chan struct{}) {
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			_ = lr.Close()
			_ = hr.Close()
		})
	}
	go func() {
		<-closeChan
		logger.Info("shutting down...")
		shutdown()
	}()
	ctx := context.Background()
	var waitDone sync.WaitGroup
	for {
		conn, err := lr.Accept()
		if err != nil {
			break
		}
		logger.Debugf("accept connection from %s", conn.RemoteAddr())
		waitDone.Add(1)
		go func() {
			defer waitDone.Done()
			hr.Handle(ctx, conn)
		}()
	}
	shutdown()
	waitDone.Wait()
}
