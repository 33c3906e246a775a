package materialize

// baseCSS is the dependency-light default stylesheet inlined into every
// materialized document.
const baseCSS = `
*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;line-height:1.5;color:#111827}
img,video{max-width:100%}
main{min-height:60vh}
`
