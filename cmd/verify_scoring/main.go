// verify_scoring 计算并打印一局的结算结果，用于手工核对分数
//
// 用法：
//
//	go run ./cmd/verify_scoring -mouseups 5 -hits 4
//	go run ./cmd/verify_scoring -clicks 10 -hits 8 -record data_csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/results"
)

var (
	clicks   = flag.Int("clicks", -1, "点击计数（每次鼠标抬起计 2）")
	mouseUps = flag.Int("mouseups", -1, "鼠标抬起次数，会换算为点击计数；与 -clicks 二选一")
	hits     = flag.Int("hits", 0, "命中数")
	record   = flag.String("record", "", "把结果追加到该文件")
	backend  = flag.String("backend", config.ResultsBackendCSV, "追加时使用的存储后端: csv | sqlite")
)

func main() {
	flag.Parse()

	total := *clicks
	if *mouseUps >= 0 {
		total = *mouseUps * config.ClickWeight
	}
	if total < 0 || *hits < 0 {
		fmt.Fprintln(os.Stderr, "需要 -clicks 或 -mouseups，且 -hits 不能为负")
		flag.Usage()
		os.Exit(2)
	}

	res := game.NewResult(total, *hits)
	rec := res.Record()

	fmt.Printf("clicks      %d\n", res.TotalClicks)
	fmt.Printf("hits        %d\n", res.TotalHits)
	fmt.Printf("misses      %d\n", res.Misses)
	fmt.Printf("multiplier  x%d\n", res.Multiplier)
	fmt.Printf("accuracy    %.2f%%\n", res.Accuracy)
	fmt.Printf("score       %s\n", res.FormattedScore())
	fmt.Printf("font size   %.0f\n", config.ScoreFontSize(res.TotalHits))
	fmt.Printf("record      %v\n", rec.Fields())

	if *record == "" {
		return
	}
	store, err := results.Open(*backend, *record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "打开存储失败: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Append(rec); err != nil {
		fmt.Fprintf(os.Stderr, "写入失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("appended to %s (%s)\n", *record, *backend)
}
