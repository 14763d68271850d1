package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle 合并编辑器保存时产生的一连串事件。
const settle = 200 * time.Millisecond

// watchAndRun 先运行一次，然后在输入文件变化时重新运行，直到 ctx 结束。
// 监视的是所在目录：很多编辑器以"写临时文件再改名"的方式保存。
func watchAndRun(ctx context.Context, j *job) error {
	if j.cfg.Input == "-" {
		return fmt.Errorf("-watch 不支持标准输入")
	}
	target, err := filepath.Abs(j.cfg.Input)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("监视目录 %s 失败: %w", filepath.Dir(target), err)
	}

	rerun := func() {
		sum, err := j.run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("生成标签失败: %v", err)
			return
		}
		fmt.Println(sum)
	}
	rerun()

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("监视出错: %v", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if relevant(ev, target) {
				timer.Reset(settle)
			}
		case <-timer.C:
			rerun()
		}
	}
}

func relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) > 0
}
