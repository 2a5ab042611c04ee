package renderer

import (
	"html/template"

	"github.com/Rakhulsr/go-kindergarten/app/utils/calc"
	"github.com/Rakhulsr/go-kindergarten/app/utils/format"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return NewWithDirectory("templates")
}

func NewWithDirectory(dir string) *render.Render {
	return render.New(render.Options{
		Directory:  dir,
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"rupiah": format.FormatRupiah,
				"finalPrice": func(price int64, discount *int64) int64 {
					return calc.FinalPrice(price, discount)
				},
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
