package practice

import (
	"path/filepath"
	"strings"
)

// DefaultLanguage is used when a problem names no language at all.
const DefaultLanguage = "python"

// Languages lists the editor languages in display order.
var Languages = []string{"python", "cpp", "java", "go"}

var languageLabels = map[string]string{
	"python": "Python",
	"cpp":    "C++",
	"java":   "Java",
	"go":     "Go",
}

// LanguageLabel returns the display name of lang, or lang itself when unknown.
func LanguageLabel(lang string) string {
	if l, ok := languageLabels[lang]; ok {
		return l
	}
	return lang
}

var extensions = map[string]string{
	".py":   "python",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".java": "java",
	".go":   "go",
}

// LanguageForFile guesses the language of a source file from its
// extension. It returns "" for unknown extensions.
func LanguageForFile(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

var templates = map[string]string{
	"python": `# 在此编写 Python 代码
from typing import List

def solution():
    pass

if __name__ == "__main__":
    import sys
    data = sys.stdin.read().strip().split()
    # TODO: 解析输入并输出
`,
	"cpp": `// 在此编写 C++ 代码
#include <bits/stdc++.h>
using namespace std;

int main() {
    ios::sync_with_stdio(false);
    cin.tie(nullptr);

    // TODO: 读取输入并输出结果
    return 0;
}
`,
	"java": `// 在此编写 Java 代码
import java.io.*;
import java.util.*;

public class Main {
    public static void main(String[] args) throws Exception {
        BufferedReader br = new BufferedReader(new InputStreamReader(System.in));
        String input = br.readLine();
        // TODO: 解析输入并输出
    }
}
`,
	"go": `// 在此编写 Go 代码
package main

import (
    "bufio"
    "fmt"
    "os"
)

func main() {
    reader := bufio.NewReader(os.Stdin)
    line, _ := reader.ReadString('\n')
    _ = line
    // TODO: 解析输入并输出
    fmt.Println(0)
}
`,
}

// Template returns the starter code for lang. Unknown languages get "".
func Template(lang string) string {
	return templates[lang]
}
