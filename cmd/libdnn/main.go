// Command libdnn pretrains a stack of RBMs on a dense CSV dataset and
// optionally dumps the learned weights, a graphviz view of the
// architecture, and a GIF of the learned filters.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ChunHungLiu/libdnn"
	"github.com/ChunHungLiu/libdnn/dataset"
	"github.com/ChunHungLiu/libdnn/encoding/filters"
	"github.com/ChunHungLiu/libdnn/rbm"
)

var (
	dataPath  = flag.String("data", "", "dense CSV dataset, one sample per line")
	hidden    = flag.String("hidden", "", "comma-separated intermediate layer widths, e.g. 512,256")
	gaussian  = flag.Bool("gaussian", false, "treat the first layer's visible units as Gaussian")
	learnRate = flag.Float64("lr", 0.1, "learning rate")
	threshold = flag.Float64("threshold", 0.05, "slope-ratio stopping threshold")
	batchSize = flag.Int("batch", 1024, "mini-batch size")
	seed      = flag.Int64("seed", 0, "sampler seed; 0 seeds from the clock")
	savePath  = flag.String("o", "", "write pretrained weights (gob) to this file")
	dotPath   = flag.String("dot", "", "write the stack architecture as graphviz dot")
	gifPath   = flag.String("gif", "", "write the learned filters as an animated GIF")
)

func main() {
	flag.Parse()
	if *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ds, err := dataset.Open(*dataPath)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("Loaded %d samples × %d features", ds.Len(), ds.Dims())

	dims := []int{ds.Dims()}
	if *hidden != "" {
		for _, field := range strings.Split(*hidden, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || d < 1 {
				log.Fatalf("bad -hidden entry %q", field)
			}
			dims = append(dims, d)
		}
	}
	dims = append(dims, promptDim(os.Stdin, os.Stdout))

	conf := libdnn.DefaultConf(dims...)
	conf.LearningRate = *learnRate
	conf.SlopeThreshold = *threshold
	conf.BatchSize = *batchSize
	conf.Seed = *seed
	conf.Progress = consoleProgress

	if *gaussian {
		conf.FirstLayerKind = rbm.GaussianBernoulli
	}

	stack := libdnn.New(conf)
	if err := stack.Pretrain(ds); err != nil {
		fmt.Fprintln(os.Stderr)
		log.Fatalf("%+v", err)
	}
	fmt.Fprintln(os.Stderr)

	for i, w := range stack.Weights {
		shp := w.Shape()
		log.Printf("Layer %d (%v): %d×%d weights", i, stack.Kinds[i], shp[0], shp[1])
	}

	if *savePath != "" {
		if err := stack.Save(*savePath); err != nil {
			log.Fatalf("%+v", err)
		}
		log.Printf("Weights written to %s", *savePath)
	}
	if *dotPath != "" {
		if err := os.WriteFile(*dotPath, []byte(stack.ToDot()), 0644); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if *gifPath != "" {
		if err := writeFilters(stack, *gifPath); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// promptDim asks for the output layer's dimensionality until it gets a
// decimal integer.
func promptDim(r io.Reader, w io.Writer) int {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "Output dimension: ")
		if !sc.Scan() {
			fmt.Fprintln(w)
			os.Exit(2)
		}
		d, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil || d < 1 {
			fmt.Fprintf(w, "%q is not a positive decimal integer\n", sc.Text())
			continue
		}
		return d
	}
}

func consoleProgress(frac float64, status string) {
	fmt.Fprintf(os.Stderr, "\r[%5.1f%%] %-70.70s", frac*100, status)
}

func writeFilters(stack *libdnn.Stack, path string) error {
	enc := filters.NewEncoder()
	for i, w := range stack.Weights {
		if err := enc.Encode(i, w); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return enc.Flush(f)
}
